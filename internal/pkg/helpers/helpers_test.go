package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, DefaultPageSize},
		{"?page=3&size=10", 3, 10},
		{"?page=0&size=-1", 1, DefaultPageSize},
		{"?page=x&size=1000", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/courses"+tt.query, nil)

		page, size := ParsePaginationParams(c)
		if page != tt.wantPage || size != tt.wantSize {
			t.Errorf("%q: page, size = %d, %d, want %d, %d", tt.query, page, size, tt.wantPage, tt.wantSize)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		page, size int
		want       []int
		wantPages  int
		wantPage   int
	}{
		{1, 2, []int{1, 2}, 3, 1},
		{3, 2, []int{5}, 3, 3},
		{4, 2, []int{}, 3, 3},
		{1, 10, []int{1, 2, 3, 4, 5}, 1, 1},
	}

	for _, tt := range tests {
		got, info := Paginate(items, tt.page, tt.size)
		if len(got) != len(tt.want) {
			t.Errorf("page %d size %d: got %v, want %v", tt.page, tt.size, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("page %d size %d: got %v, want %v", tt.page, tt.size, got, tt.want)
				break
			}
		}
		if info.TotalPages != tt.wantPages || info.CurrentPage != tt.wantPage || info.TotalItems != 5 {
			t.Errorf("page %d size %d: info = %+v", tt.page, tt.size, info)
		}
	}

	_, info := Paginate([]string(nil), 1, 10)
	if info.TotalPages != 1 || info.TotalItems != 0 {
		t.Errorf("empty info = %+v", info)
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90s", time.Minute); got != 90*time.Second {
		t.Errorf("ParseDuration(90s) = %v", got)
	}
	if got := ParseDuration("soon", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration(soon) = %v, want default", got)
	}
	if got := ParseDuration("", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration(\"\") = %v, want default", got)
	}
}
