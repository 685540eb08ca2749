package converter

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/fleetworks/fleet-maintenance/internal/notifier/model"
)

var (
	//go:embed templates/part_alert.tmpl
	partAlertFS       embed.FS
	partAlertTemplate = template.Must(template.ParseFS(partAlertFS, "templates/part_alert.tmpl"))
)

func BuildPartAlert(event model.PartAlert) (string, error) {
	n := model.PartAlertNotification{
		Registration:     event.Registration,
		PartName:         event.PartName,
		LifeRemainingPct: fmt.Sprintf("%.0f", event.LifeRemainingPct),
		Message:          event.Message,
		OccurredAt:       event.OccurredAt.Format(time.RFC1123),
	}

	var buf bytes.Buffer
	if err := partAlertTemplate.Execute(&buf, n); err != nil {
		return "", err
	}

	return buf.String(), nil
}
