package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	lock      sync.Mutex
	callCount = make(map[string]int)
)

// UpdateEnv is the environment variable that allows missing snapshots to be written
const UpdateEnv = "UPDATE_SNAPSHOTS"

// ValidateSnapshot compares obj, as indented JSON, against testdata/<test name>-<n>.json
// n counts the calls made by the test. A missing snapshot fails the test unless UPDATE_SNAPSHOTS is set.
func ValidateSnapshot(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	lock.Lock()
	call := callCount[name]
	callCount[name] = call + 1
	lock.Unlock()

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			if os.Getenv(UpdateEnv) == "" {
				t.Errorf("missing snapshot %s, run with %s=1 to write it", filename, UpdateEnv)
				return
			}

			create(t, filename, objJSON)
			return
		}

		t.Fatal(err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func create(t *testing.T, filename string, objJSON []byte) {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filename, append(objJSON, '\n'), 0644); err != nil {
		t.Fatal(err)
	}
}
