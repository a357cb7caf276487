// Package admin provides the gophcms operator command line.
//
// Commands:
//   - adduser: prompt for id, role and password, then store the user
//   - token <subject>: mint an access/refresh pair
//   - inspect [-refresh] <token>: decode a token without the freshness check
//   - secret: print a random secret suitable for JWT_ACCESS_SECRET
//
// Server flags (-d, -s, -k, -c ...) may precede the command and are read by
// the server config loader.
package admin
