package util

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	json "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"
)

type Header struct {
	Key   string
	Value string
}

// BasicAuth 构造 Authorization 头
func BasicAuth(user, token string) Header {
	raw := base64.StdEncoding.EncodeToString([]byte(user + ":" + token))
	return Header{Key: "Authorization", Value: "Basic " + raw}
}

type Http struct {
	Url      string
	Query    interface{}
	Headers  []Header
	Timeout  time.Duration
	Response *fasthttp.Response
}

func NewHttp(url string, query interface{}, headers ...Header) *Http {
	return &Http{
		Url:     url,
		Query:   query,
		Headers: headers,
		Timeout: 30 * time.Second,
	}
}

// Encode 把查询参数编码为 k=v&k=v，key 按字典序
func Encode(query interface{}) (string, error) {
	values := url.Values{}
	switch q := query.(type) {
	case nil:
		return "", nil
	case string:
		return q, nil
	case map[string]string:
		for key, value := range q {
			values.Set(key, value)
		}
	default:
		// 其他类型先转成 map
		jsonBytes, err := json.Marshal(q)
		if err != nil {
			return "", fmt.Errorf("failed to marshal query: %v", err)
		}
		var queryMap map[string]interface{}
		if err := json.Unmarshal(jsonBytes, &queryMap); err != nil {
			return "", fmt.Errorf("failed to unmarshal query: %v", err)
		}
		keys := make([]string, 0, len(queryMap))
		for key := range queryMap {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			values.Set(key, fmt.Sprint(queryMap[key]))
		}
	}
	return values.Encode(), nil
}

func (h *Http) do(request *fasthttp.Request) error {
	for _, header := range h.Headers {
		request.Header.Set(header.Key, header.Value)
	}

	response := fasthttp.AcquireResponse()
	if err := fasthttp.DoTimeout(request, response, h.Timeout); err != nil {
		fasthttp.ReleaseResponse(response)
		return err
	}

	code := response.StatusCode()
	if code < 200 || code >= 300 {
		body := string(response.Body())
		fasthttp.ReleaseResponse(response)
		return fmt.Errorf("%s request failed, status code: %d，body: %s", request.Header.Method(), code, body)
	}

	h.Response = response
	return nil
}

func (h *Http) Get() error {
	request := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(request)

	request.Header.SetMethod(fasthttp.MethodGet)
	queryString, err := Encode(h.Query)
	if err != nil {
		return err
	}
	if queryString != "" {
		if strings.Contains(h.Url, "?") {
			h.Url += "&" + queryString
		} else {
			h.Url += "?" + queryString
		}
	}
	request.SetRequestURI(h.Url)
	return h.do(request)
}

// PostForm 以 application/x-www-form-urlencoded 提交
func (h *Http) PostForm() error {
	request := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(request)

	request.Header.SetMethod(fasthttp.MethodPost)
	request.SetRequestURI(h.Url)
	request.Header.SetContentType("application/x-www-form-urlencoded")

	body, err := Encode(h.Query)
	if err != nil {
		return err
	}
	request.SetBodyString(body)
	return h.do(request)
}

// Header 读取响应头，需在 Close 之前调用
func (h *Http) Header(key string) string {
	if h.Response == nil {
		return ""
	}
	return string(h.Response.Header.Peek(key))
}

func (h *Http) Result() (*gjson.Result, error) {
	defer h.Close()
	body := h.Response.Body()
	if len(body) == 0 {
		return nil, errors.New("response body is empty")
	}
	result := gjson.ParseBytes(body)
	return &result, nil
}

func (h *Http) Close() {
	if h.Response != nil {
		fasthttp.ReleaseResponse(h.Response)
		h.Response = nil
	}
}

func HttpGet(uri string, v interface{}, headers ...Header) (*gjson.Result, error) {
	h := NewHttp(uri, v, headers...)
	err := h.Get()
	if err != nil {
		return nil, err
	}
	return h.Result()
}
