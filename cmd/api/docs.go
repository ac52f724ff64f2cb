package main

// @title Pandamarket API
// @version 1.0
// @description Marketplace and community backend: products, articles, comments, likes and accounts.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "
