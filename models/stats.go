package models

// StatusCount is the shape produced by the $group pipelines: one grouped
// field value and how many documents carry it.
type StatusCount struct {
	Status string `bson:"status" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

type PriorityCount struct {
	Priority string `bson:"priority" json:"priority"`
	Count    int64  `bson:"count" json:"count"`
}

type DepartmentCount struct {
	DepartmentID string `bson:"department_id" json:"department_id"`
	Count        int64  `bson:"count" json:"count"`
}

// DashboardSummary merges the independent dashboard queries into one
// payload. Each field comes from its own read; the composite is an
// eventually consistent snapshot, not a transaction.
type DashboardSummary struct {
	ProjectTotal              int64             `json:"project_total"`
	ActiveProjects            int64             `json:"active_projects"`
	OverdueTasks              int64             `json:"overdue_tasks"`
	UpcomingDeadlines         []Task            `json:"upcoming_deadlines"`
	ProjectStatusDistribution []StatusCount     `json:"project_status_distribution"`
	TaskStatusDistribution    []StatusCount     `json:"task_status_distribution"`
	DepartmentWorkload        []DepartmentCount `json:"department_workload"`
	RecentActivities          []Activity        `json:"recent_activities"`
}

// TaskWithSubtasks is one entry of the project detail aggregate.
type TaskWithSubtasks struct {
	Task     Task      `json:"task"`
	Subtasks []Subtask `json:"subtasks"`
}

// ProjectDetail is the denormalized read-side view of a project: the
// project itself, its tasks each with their subtasks, and recent activity.
type ProjectDetail struct {
	Project    Project            `json:"project"`
	Tasks      []TaskWithSubtasks `json:"tasks"`
	Activities []Activity         `json:"activities"`
}
