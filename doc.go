// Package main provides the entry point for the Koi Garden content API.
// It runs a web server using the Fiber framework that exposes CRUD
// endpoints for the website content: services, projects, posts,
// testimonials, contacts, hero slides, company info, typed settings and
// admin users. The application uses gorm for data persistence.
package main
