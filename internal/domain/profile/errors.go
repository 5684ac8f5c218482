package profile

import "errors"

var (
	ErrStudentNotFound = errors.New("student profile not found")
	ErrSponsorNotFound = errors.New("sponsor profile not found")
)
