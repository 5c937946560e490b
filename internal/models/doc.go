// Package models defines the portfolio entities shared by the repository,
// service and HTTP layers.
package models
