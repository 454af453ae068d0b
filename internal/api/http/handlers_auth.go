package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"campus-canteen/internal/service"
	"campus-canteen/internal/storage"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	token, profile, err := h.Auth.SignUp(r.Context(), input.Email, input.Password, input.FullName)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, profile, err := h.Auth.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.Auth.RequestPasswordReset(input.Email)
	if err != nil {
		// Same response either way; reset requests do not leak which emails exist.
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":      "accepted",
		"reset_token": token,
	})
}

func (h *Handler) completePasswordReset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ResetToken  string `json:"reset_token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.NewPassword == "" {
		http.Error(w, "new password is required", http.StatusBadRequest)
		return
	}

	if err := h.Auth.CompletePasswordReset(input.ResetToken, input.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Auth.Profile(userIDFrom(r))
	if err != nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.FullName == "" {
		http.Error(w, "full_name is required", http.StatusBadRequest)
		return
	}

	userID := userIDFrom(r)
	if err := h.Auth.UpdateFullName(r.Context(), userID, input.FullName); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	profile, err := h.Auth.Profile(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
