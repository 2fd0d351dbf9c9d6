// Package adminauth implements the authentication backend for the school
// administration API: admin registration and login, stateless JWT session
// cookies, and role gated teacher provisioning.
package adminauth
