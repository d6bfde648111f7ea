// Package web serves the recipe catalog over HTTP.
//
// Routes:
//
//	GET  /                home page
//	GET  /recipes         list, optionally filtered by ?category=
//	GET  /recipe/{id}     detail; unknown ids redirect to /recipes
//	GET  /add_recipe      blank submission form
//	POST /add_recipe      validate and create, or re-render with input
//	GET  /static/*        embedded stylesheet and images
//
// Pages are html/template views embedded in the binary. Notifications that
// must survive a redirect go through the flash store.
package web
