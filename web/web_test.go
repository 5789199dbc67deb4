package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/extopy/extopy-go/db"
	"github.com/extopy/extopy-go/util"
	"github.com/gin-gonic/gin"
)

var (
	testDBOnce   sync.Once
	testDatabase *db.DB
)

// testDB returns the shared package fixture. GetDB is a process-wide
// singleton, so every test here goes through one database file; tests
// use unique usernames to stay out of each other's way.
func testDB(t *testing.T) *db.DB {
	t.Helper()
	testDBOnce.Do(func() {
		dir, err := os.MkdirTemp("", "extopy-web-test")
		if err != nil {
			panic(err)
		}
		testDatabase = db.GetDB(filepath.Join(dir, "test.db"))
	})
	return testDatabase
}

func testConf() *util.AppConfig {
	conf := &util.AppConfig{}
	conf.Conf.Host = "localhost"
	conf.Conf.HttpPort = 8080
	conf.Conf.PageSize = 25
	conf.Conf.MaxPageSize = 100
	return conf
}

func doRequest(g *gin.Engine, method string, path string, body any, viewer string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if viewer != "" {
		req.Header.Set(ViewerHeader, viewer)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}
