package discovery

import (
	"time"

	"github.com/catherinevee/inventorymgr/pkg/models"
)

const (
	unknownValue    = "Unknown"
	defaultHostname = "N/A"
	defaultNodes    = 1
)

func stringOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func int64Or(p *int64, def int64) int64 {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// childName renders the display name of a record nested under its predecessor
func childName(name string) string {
	return models.ChildPrefix + name
}
