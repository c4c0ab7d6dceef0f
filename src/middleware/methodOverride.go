package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideField is the hidden form field HTML forms use to send
// PATCH, PUT or DELETE through a POST.
const MethodOverrideField = "_method"

// MethodOverride rewrites the request method before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch method := strings.ToUpper(r.PostFormValue(MethodOverrideField)); method {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
