package alerts

import (
	"github.com/diwise/alert-console/pkg/types"
	"github.com/samber/lo"
)

// Merge overlays locally recorded status and actions onto a freshly fetched
// page. Only those two fields are replaced; everything else is taken from the
// remote payload as is. Merge performs no I/O.
func Merge(raw []types.Alert, overlay map[string]types.OverlayEntry) []types.Alert {
	return lo.Map(raw, func(a types.Alert, _ int) types.Alert {
		a.Status = a.CurrentStatus()

		entry, ok := overlay[types.CanonicalID(a)]
		if !ok {
			return a
		}

		if entry.Status != nil {
			a.Status = *entry.Status
		}
		a.Actions = append([]types.ActionRecord(nil), entry.Actions...)

		return a
	})
}
