package respond

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		count          int64
		pageSize       int32
		current        int32
		wantTotalPages int32
	}{
		{0, 10, 1, 0},
		{1, 10, 1, 1},
		{10, 10, 1, 1},
		{11, 10, 2, 2},
		{25, 10, 3, 3},
		{5, 0, 1, 5}, // zero page size is clamped to 1
	}
	for _, tt := range tests {
		p := NewPaginated(tt.count, tt.pageSize, tt.current)
		if p.TotalPages != tt.wantTotalPages {
			t.Errorf("NewPaginated(%d, %d, %d).TotalPages = %d, want %d",
				tt.count, tt.pageSize, tt.current, p.TotalPages, tt.wantTotalPages)
		}
		if p.Count != tt.count || p.Current != tt.current {
			t.Errorf("pagination = %+v", p)
		}
	}
}

func TestOK_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	OK(c, map[string]string{"hello": "world"})

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var env struct {
		Success bool              `json:"success"`
		Result  map[string]string `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || env.Result["hello"] != "world" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, 401, "invalid credentials")

	if w.Code != 401 {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Success || env.Message != "invalid credentials" {
		t.Errorf("envelope = %+v", env)
	}
	if env.Result != nil || env.Pagination != nil {
		t.Error("error envelope should omit result and pagination")
	}
}
