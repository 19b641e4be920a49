// Package auth authorizes API clients by opaque bearer tokens.
package auth

// Token grants API access to a named client.
type Token struct {
	Token  string `db:"token" bson:"token"`
	Name   string `db:"name" bson:"name"`
	Active bool   `db:"active" bson:"active"`
}

// Client is an authorized API caller.
type Client struct {
	Name string
}
