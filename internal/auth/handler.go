package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "X-LIFTLOG-TOKEN"

type Handler struct {
	authService *Service
	// invoked after a successful user sign in, e.g. to kick off a sync run
	onSignIn func(userID string)
}

func NewHandler(authService *Service, onSignIn func(userID string)) *Handler {
	return &Handler{
		authService: authService,
		onSignIn:    onSignIn,
	}
}

// HandleLogin mints a session for a user already authenticated by the
// client's identity provider. A successful sign in kicks off a background
// sync against the profile store.
func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		UserID        string `json:"userId"`
		ProviderToken string `json:"providerToken"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			UserID:        r.Form.Get("user_id"),
			ProviderToken: r.Form.Get("provider_token"),
		}
	}

	if loginReq.UserID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	if loginReq.ProviderToken == "" {
		http.Error(w, "error, provider token empty", http.StatusBadRequest)
		return
	}

	if userIP, err := pkg.ReadUserIP(r); err != nil {
		log.Tracef("login, failed to get user IP address: %s", err)
	} else {
		span.SetAttributes(attribute.String("user.ip", userIP))
	}

	token, err := handler.authService.Login(ctx, loginReq.UserID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	if handler.onSignIn != nil {
		handler.onSignIn(loginReq.UserID)
	}

	log.Tracef("new login success for user: %s", loginReq.UserID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s"}`, token))
}

func (handler *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.adminLogin")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type adminLoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var loginReq adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Errorf("admin login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		http.Error(w, "error, username or password empty", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.LoginAdmin(ctx, loginReq.Username, loginReq.Password, time.Now())
	if errors.Is(err, ErrInvalidCredentials) {
		log.Tracef("failed admin login attempt for user: %s", loginReq.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("admin login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Trace("new admin login success")
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s"}`, token))
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(TokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.authService.Logout(ctx, authToken); err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Printf("logout for [%s] success", authToken)
	pkg.WriteTextResponseOK(w, "logged-out")
}
