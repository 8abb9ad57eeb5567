package http

import (
	"log/slog"
	"net/http"
	"strings"
)

type RouterConfig struct {
	Session      *SessionHandler
	Reservations *ReservationHandler
	Rooms        *RoomHandler
	Theme        *ThemeHandler
	// Ready gates every route but /healthz until the initial load completes.
	Ready ReadinessChecker
	// Profiles, when set, restricts reservation routes to a signed-in user.
	Profiles   ProfileSource
	Logger     *slog.Logger
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		ready := cfg.Ready == nil || cfg.Ready.Ready()
		newResponder(cfg.Logger).writeJSON(r.Context(), w, http.StatusOK, healthResponse{Status: "ok", Ready: ready})
	})

	if cfg.Session != nil {
		mux.HandleFunc("/session/register", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Session.Register(w, r)
		})
		mux.HandleFunc("/session/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Session.Login(w, r)
		})
		mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Session.Current(w, r)
			case http.MethodDelete:
				cfg.Session.Logout(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodDelete)
			}
		})
	}

	if cfg.Reservations != nil {
		guard := func(h http.HandlerFunc) http.Handler {
			if cfg.Profiles == nil {
				return h
			}
			return RequireProfile(cfg.Profiles, cfg.Logger)(h)
		}

		mux.Handle("/reservations", guard(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Reservations.List(w, r)
			case http.MethodPost:
				cfg.Reservations.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.Handle("/reservations/", guard(func(w http.ResponseWriter, r *http.Request) {
			rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/reservations/"), "/")
			id, action, _ := strings.Cut(rest, "/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithReservationID(r.Context(), id))

			switch action {
			case "":
				if r.Method != http.MethodPatch {
					methodNotAllowed(w, http.MethodPatch)
					return
				}
				cfg.Reservations.Update(w, r)
			case "cancel", "complete":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				if action == "cancel" {
					cfg.Reservations.Cancel(w, r)
				} else {
					cfg.Reservations.Complete(w, r)
				}
			default:
				http.NotFound(w, r)
			}
		}))
	}

	if cfg.Rooms != nil {
		mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Rooms.List(w, r)
		})
		mux.HandleFunc("/rooms/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/rooms/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Rooms.Get(w, r, id)
		})
	}

	if cfg.Theme != nil {
		mux.HandleFunc("/theme", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Theme.Show(w, r)
		})
		mux.HandleFunc("/theme/toggle", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Theme.Toggle(w, r)
		})
	}

	var handler http.Handler = mux
	if cfg.Ready != nil {
		handler = RequireReady(cfg.Ready, cfg.Logger)(handler)
	}
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

type healthResponse struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
