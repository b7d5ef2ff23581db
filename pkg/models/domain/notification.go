package domain

import "time"

type NotificationSeverity string

const (
	NotificationInfo    NotificationSeverity = "info"
	NotificationSuccess NotificationSeverity = "success"
	NotificationWarning NotificationSeverity = "warning"
)

type Notification struct {
	ID        string
	Message   string
	Severity  NotificationSeverity
	Timestamp time.Time
}
