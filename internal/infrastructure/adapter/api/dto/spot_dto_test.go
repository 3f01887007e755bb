package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindJSON(t *testing.T, body string, target interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(target)
}

func TestAddSpotRequestBinding(t *testing.T) {
	t.Run("should accept a spot at zero coordinates", func(t *testing.T) {
		var req AddSpotRequest
		err := bindJSON(t, `{"title":"Null Island","lat":0,"lon":0,"telegraph_url":"https://telegra.ph/null","init_data":"query_id=1"}`, &req)

		require.NoError(t, err)
		assert.Equal(t, float64(0), req.Lat)
		assert.Equal(t, float64(0), req.Lon)
	})

	t.Run("should reject a submission without a title", func(t *testing.T) {
		var req AddSpotRequest
		err := bindJSON(t, `{"lat":55.7,"lon":37.6,"telegraph_url":"https://telegra.ph/x","init_data":"query_id=1"}`, &req)

		assert.Error(t, err)
	})
}
