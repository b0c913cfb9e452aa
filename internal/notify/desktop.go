package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// notifyFunc is replaced in tests so no real notification is shown.
var notifyFunc = beeep.Notify

// Desktop shows a native desktop notification.
type Desktop struct{}

// Notify implements Notifier.
func (Desktop) Notify(_ context.Context, title, message string) error {
	if err := notifyFunc(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
