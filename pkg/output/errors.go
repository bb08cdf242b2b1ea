package output

import (
	"errors"

	"github.com/sdejongh/keydrift/pkg/models"
)

func asCheckError(err error) (*models.CheckError, bool) {
	var checkErr *models.CheckError
	if errors.As(err, &checkErr) {
		return checkErr, true
	}
	return nil, false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
