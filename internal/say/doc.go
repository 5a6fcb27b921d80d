// Package say provides the say and palette commands, which render `<token>`
// templates through a console.Console built from configuration.
package say
