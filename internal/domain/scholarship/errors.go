package scholarship

import "errors"

var (
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrInvalidStatus       = errors.New("invalid scholarship status")
)
