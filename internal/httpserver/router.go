package httpserver

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Schema graphql.Schema
}

func Register(e *echo.Echo, d *Deps) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{
			"http://127.0.0.1:3000",
			"http://localhost:3000",
			"http://localhost:8000",
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderAccept, echo.HeaderContentType},
		MaxAge:       3600,
	}))

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/", GraphQLHandler(d.Schema))
	e.GET("/", GraphiQLHandler())
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func GraphQLHandler(schema graphql.Schema) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req graphqlRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err)
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request().Context(),
		})
		return c.JSON(http.StatusOK, result)
	}
}

const graphiqlPage = `<!DOCTYPE html>
<html>
<head>
  <title>GraphiQL</title>
  <style>html, body, #graphiql { height: 100%; margin: 0; }</style>
  <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
</head>
<body>
  <div id="graphiql"></div>
  <script crossorigin src="https://unpkg.com/react/umd/react.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/graphiql/graphiql.min.js"></script>
  <script>
    ReactDOM.render(
      React.createElement(GraphiQL, { fetcher: GraphiQL.createFetcher({ url: '/' }) }),
      document.getElementById('graphiql'),
    );
  </script>
</body>
</html>`

func GraphiQLHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.HTML(http.StatusOK, graphiqlPage)
	}
}
