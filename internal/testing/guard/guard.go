// Package guard flips the runtime into test mode before any package
// init that might touch external services. Test packages import it for
// the side effect only.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("BALANZA_TEST_MODE") == "" {
			_ = os.Setenv("BALANZA_TEST_MODE", "1")
		}
	})
}
