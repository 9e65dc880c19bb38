package closing

import (
	"os"
	"testing"

	"github.com/vfg2006/pos-dashboard-api/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}
