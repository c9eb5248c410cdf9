/*
The middleware package defines what a middleware is in rails and a small set of
transport middlewares the app wiring applies around action dispatch.

The available middlewares are:
- InjectIPAddress
- LogRequest
- RequestID
*/
package middleware
