package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(rawQuery string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	p := paramsFor("page=3&limit=50")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 100, p.Offset)

	p = paramsFor("")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = paramsFor("page=-1&limit=0")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = paramsFor("limit=9999")
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestWrap(t *testing.T) {
	items := []string{"a", "b"}
	page := Wrap(items, Params{Page: 2, Limit: 20}, 42)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, int64(42), page.Total)
	assert.Equal(t, items, page.Items)
}
