// Package views renders the storefront HTML as templ components. Components
// read the bound locale and translator from the render context, so the
// Localization middleware must run before them.
package views
