// Package auth provides the authentication core of the API: bcrypt
// password hashing, HS256 session tokens, the user store and the
// register/login HTTP handlers.
//
// Tokens:
//   - TokenService signs tokens whose payload is exactly {id, username}
//     plus iat/exp. Every verification failure is reported as
//     ErrInvalidToken; the cause (expired, signature, malformed) stays in
//     the error chain for logging.
//
// Login:
//   - Auther.Authenticate never tells an unknown username apart from a
//     wrong password. Both return ErrInvalidUsernameOrPassword.
//
// Activity sinks:
//   - ActivityEmitter records audit events in a background goroutine.
//     Sink errors are logged and dropped so the originating request never
//     waits on, or fails because of, the audit write.
package auth
