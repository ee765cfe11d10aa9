// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the authenticated identity attached to a request context.
//
// It is loaded fresh from the user store on every authenticated request
// (token claims alone are not trusted for existence), with the password hash
// stripped before it ever reaches a handler.
type Principal struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}
