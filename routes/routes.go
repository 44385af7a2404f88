package routes

// Routes package cung cấp tất cả routing functions cho Search Intent Parser Service
//
// Cấu trúc:
// - api.go: API routes (/api/v1/*)
// - web.go: Web routes (/, /docs)
// - routes.go: Export functions
//
// Sử dụng:
// routes.SetupAllRoutes(router, intentController, adminController, adminToken)
