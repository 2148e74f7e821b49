package config

import (
	"github.com/openzipkin/zipkin-go"
	"github.com/openzipkin/zipkin-go/reporter/http"
)

type ZipkinConfig struct {
	Url string `yaml:"url"`
}

func InitZipkin(zipkinConfig ZipkinConfig, appName, host string) (*zipkin.Tracer, error) {
	reporter := http.NewReporter(zipkinConfig.Url)
	endpoint, err := zipkin.NewEndpoint(appName, host)
	if err != nil {
		return nil, err
	}
	return zipkin.NewTracer(
		reporter,
		zipkin.WithLocalEndpoint(endpoint),
		zipkin.WithSampler(zipkin.NewModuloSampler(1)),
	)
}
