//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// note that JSONPretty will end up strikingly prominent on the profiler: a waste of memory and cycles unless
	// you are debugging and want to be able to inspect the json manually
	return c.JSON(http.StatusOK, jsr)
}

// JSONerror - a usage error (bad index, bad side, misaligned metrics) goes back as {"error": "..."}
func JSONerror(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// GoJSONSerializer - echo's JSONSerializer backed by goccy/go-json instead of encoding/json
type GoJSONSerializer struct{}

func (GoJSONSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (GoJSONSerializer) Deserialize(c echo.Context, i any) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
