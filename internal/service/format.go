package service

import (
	"errors"
	"fmt"
	"time"

	"billed/internal/models"
)

var ErrInvalidDate = errors.New("invalid bill date")

// Capitalised French short month names cut to three letters.
var shortMonths = [12]string{"Jan", "Fév", "Mar", "Avr", "Mai", "Jui", "Jui", "Aoû", "Sep", "Oct", "Nov", "Déc"}

var statusLabels = map[models.BillStatus]string{
	models.BillStatusPending:  "En attente",
	models.BillStatusAccepted: "Accepté",
	models.BillStatusRefused:  "Refusé",
}

// FormatDate renders a stored bill date for display, e.g. "2004-04-04" -> "4 Avr. 04".
func FormatDate(raw string) (string, error) {
	t, err := parseBillDate(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s. %02d", t.Day(), shortMonths[t.Month()-1], t.Year()%100), nil
}

// FormatStatus returns the display label of a status; unknown values are returned as is.
func FormatStatus(status string) string {
	if label, ok := statusLabels[models.BillStatus(status)]; ok {
		return label
	}
	return status
}

func parseBillDate(raw string) (time.Time, error) {
	if t, err := time.Parse(models.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
