// Package clientip resolves the address of the visitor behind a request.
//
// Proxy headers are only as trustworthy as the proxy in front of the
// service; deployments reached directly should use NewDirect.
//
//	ips := clientip.New("X-Forwarded-For")
//	r.Use(ips.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
