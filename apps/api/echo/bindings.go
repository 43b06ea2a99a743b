package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID parses the ":id" path param. Detail routes treat a non-numeric ID
// as an unknown resource.
func pathID(ctx echo.Context) (int, error) {
	return strconv.Atoi(ctx.Param("id"))
}
