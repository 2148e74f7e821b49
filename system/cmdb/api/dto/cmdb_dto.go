package dto

type ProjectDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type EnvDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AppDTO 应用，JenkinsJob 为空表示没有更新任务
type AppDTO struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	SubsystemID int64  `json:"subsystem_id"`
	EnvID       int64  `json:"env_id"`
	JenkinsJob  string `json:"jenkins_job"`
}
