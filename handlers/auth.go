package handlers

import (
	"net/http"

	"clementus360/goal-tracker/types"
)

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.accounts.SignUp(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "sign up")
		return
	}
	writeJSON(w, http.StatusCreated, types.SessionResponse{Success: true, Session: &session})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "log in")
		return
	}
	writeJSON(w, http.StatusOK, types.SessionResponse{Success: true, Session: &session})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Logout(r.Context(), session); err != nil {
		writeServiceError(w, err, "log out")
		return
	}
	if h.seeds != nil {
		h.seeds.Forget(session.User.ID)
	}
	writeJSON(w, http.StatusOK, types.StatusResponse{Success: true, Message: "Logged out"})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.CurrentUser(r.Context(), session)
	if err != nil {
		writeServiceError(w, err, "load profile")
		return
	}
	writeJSON(w, http.StatusOK, types.UserResponse{Success: true, User: &user})
}

func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var update types.ProfileUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), session, update)
	if err != nil {
		writeServiceError(w, err, "update profile")
		return
	}
	writeJSON(w, http.StatusOK, types.UserResponse{Success: true, User: &user})
}

func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var req types.PasswordChange
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), session, req); err != nil {
		writeServiceError(w, err, "change password")
		return
	}
	writeJSON(w, http.StatusOK, types.StatusResponse{Success: true, Message: "Password updated"})
}
