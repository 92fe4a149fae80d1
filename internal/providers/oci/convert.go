package oci

import (
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"

	"github.com/catherinevee/inventorymgr/internal/providers"
)

// listAll calls fetch page by page, following opc-next-page until exhausted
func listAll[T any](fetch func(page *string) ([]T, *string, error)) ([]T, error) {
	var (
		all  []T
		page *string
	)
	for {
		items, next, err := fetch(page)
		if err != nil {
			return nil, translateError(err)
		}
		all = append(all, items...)
		if next == nil || *next == "" {
			return all, nil
		}
		page = next
	}
}

// translateError maps SDK service errors onto providers.ServiceError
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if se, ok := common.IsServiceError(err); ok {
		return &providers.ServiceError{
			StatusCode:   se.GetHTTPStatusCode(),
			Code:         se.GetCode(),
			Message:      se.GetMessage(),
			OpcRequestID: se.GetOpcRequestID(),
		}
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sdkTime(t *common.SDKTime) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// enumString returns nil for an empty enum value
func enumString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
