package usecase

import "time"

const (
	StudentsListCacheKey = "students:all"
	studentsListLockKey  = "students:lock:all"
	studentsListGenKey   = "students:gen:all"
	studentsListLockTTL  = 5 * time.Second
)
