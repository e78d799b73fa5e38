// Package debug serves a read-only JSON view of a running container.
//
//	mux := debug.NewHandler(inj, log)
//	go http.ListenAndServe(cfg.Debug.Addr, mux)
//
// Routes:
//
//	GET /beans              live beans in creation order
//	GET /contracts          every contract with its implementations
//	GET /contracts/{name}   one contract, by simple or full type name
package debug

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/routing"
)

// Source is what the inspector reads. *app.Injector implements it.
type Source interface {
	Beans() []container.Bean
	Mappings() []container.ContractMapping
}

// BeanView is the JSON form of a live bean.
type BeanView struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// ContractView is the JSON form of a contract and its implementations.
type ContractView struct {
	Contract        string   `json:"contract"`
	Name            string   `json:"name"`
	Implementations []string `json:"implementations"`
}

// NewHandler returns the inspector for src. log may be nil. Responses are
// never cached, and a panicking Source yields a 500 JSON response.
func NewHandler(src Source, log *zap.Logger) http.Handler {
	r := routing.New(log)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).NotFound()
	})

	r.Group(func(g *routing.Router) {
		g.Middleware(noStore)

		g.Get("/beans", func(w http.ResponseWriter, _ *http.Request) {
			gohttp.NewResponse(w).Success(Beans(src))
		})

		g.Prefix("/contracts", func(c *routing.Router) {
			c.Get("/", func(w http.ResponseWriter, _ *http.Request) {
				gohttp.NewResponse(w).Success(Contracts(src))
			})
			c.Get("/{name}", func(w http.ResponseWriter, req *http.Request) {
				contract(src, gohttp.NewResponse(w), routing.Param(req, "name"))
			})
		})
	})

	return r
}

func contract(src Source, res *gohttp.Response, name string) {
	var matches []ContractView
	for _, c := range Contracts(src) {
		if c.Contract == name || strings.EqualFold(c.Name, name) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		res.NotFound("no contract named " + name)
	case 1:
		res.Success(matches[0])
	default:
		res.Error(http.StatusConflict, "several contracts are named "+name+"; use the full type name")
	}
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, req)
	})
}

// Beans lists the live beans of src.
func Beans(src Source) []BeanView {
	beans := src.Beans()
	out := make([]BeanView, 0, len(beans))
	for _, b := range beans {
		out = append(out, BeanView{Type: b.Type.String(), Name: container.SimpleName(b.Type)})
	}
	return out
}

// Contracts groups the mappings of src by contract, in order of first
// registration.
func Contracts(src Source) []ContractView {
	var out []ContractView
	index := make(map[string]int)
	for _, m := range src.Mappings() {
		key := m.Contract.String()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, ContractView{Contract: key, Name: container.SimpleName(m.Contract)})
		}
		out[i].Implementations = append(out[i].Implementations, m.Implementation.String())
	}
	return out
}
