// Package events is the HTTP surface of the back office's real-time layer.
//
// Router mounts:
//
//	GET  /companies                      list companies
//	POST /companies                      create a company
//	PUT  /companies/{cid}/status         suspend or reactivate a company
//	GET  /companies/{cid}                show the resolved company
//	GET  /companies/{cid}/events         server-sent event stream
//	POST /companies/{cid}/events         publish an event to the company
//	GET  /companies/{cid}/events/stats   live subscriber count
//
// Every /companies/{cid} route except status runs behind tenant.Middleware
// and tenant.Scope, so handlers only ever see the company named in the path.
// Published events go through an eventrelay.Publisher: the local hub in a
// single instance, Redis when several instances share the load. With a
// PublishLimiter configured, POST /events is limited per company and answers
// 429 once the company's bucket is empty.
package events
