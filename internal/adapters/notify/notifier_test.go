package notify_test

import (
	"errors"
	"testing"

	"go.trai.ch/peek/internal/adapters/notify"
	"go.trai.ch/peek/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	n := notify.NewNotifier(mockLogger)

	failure := errors.New("asset API did not respond")
	gomock.InOrder(
		mockLogger.EXPECT().Info("✓ asset mappings reloaded: 4 entries"),
		mockLogger.EXPECT().Error(failure),
	)

	n.Notify("asset mappings reloaded: 4 entries")
	n.NotifyError(failure)
	n.NotifyError(nil)
}
