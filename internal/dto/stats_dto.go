package dto

import "time"

// ImpactResponse summarises platform-wide totals for the landing page.
type ImpactResponse struct {
	TotalUsers       int64     `json:"totalUsers"`
	TotalStudents    int64     `json:"totalStudents"`
	TotalTeachers    int64     `json:"totalTeachers"`
	TotalClasses     int64     `json:"totalClasses"`
	TotalEnrollments int64     `json:"totalEnrollments"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// PopularClassResponse is a published class with its enrollment count.
type PopularClassResponse struct {
	ClassResponse
	TotalEnrollments int64 `json:"totalEnrollments"`
}

// DailySubmissionCount is the number of submissions received on a day.
type DailySubmissionCount struct {
	Date        string `json:"date"`
	Submissions int64  `json:"submissions"`
}

// ClassInfoResponse is the progress overview a teacher sees for a class.
type ClassInfoResponse struct {
	Class             ClassResponse          `json:"class"`
	TotalEnrollments  int64                  `json:"totalEnrollments"`
	TotalAssignments  int64                  `json:"totalAssignments"`
	TotalSubmissions  int64                  `json:"totalSubmissions"`
	SubmissionsPerDay []DailySubmissionCount `json:"submissionsPerDay"`
}
