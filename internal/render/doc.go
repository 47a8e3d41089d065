// Package render provides the HTML rendering engine for aur2, built on top
// of the html/template package.
//
// render is organized around Components and Pages. A Component is some piece
// of the HTML document that you want included in the page's output. A Page is
// a Component that gets rendered itself rather than being included in another
// Component. The profile page is a Page; the base layout every page fills in
// is a Component.
//
// render also has the concept of a Site. Each server should have a Site,
// which acts as a singleton for the server and provides the fs.FS containing
// the templates that Components are using. A Site will also be available at
// render time, as .Site, so it can hold configuration data used across all
// pages.
//
// To render a page, pass it to the Render function. The page itself will be
// made available as .Page within the template, and the Site will be available
// as .Site.
//
// Components tend to be structs, with properties for whatever data they want
// to pass to their templates. When a Component relies on another Component,
// the profile page including the base layout for example, a good practice is
// to make an instance of the layout Component a property on the page
// Component struct, and to include it in the output of the page's
// UseComponents method, so all its methods (the templates it uses, any CSS or
// JS it embeds or links to, any Components _it_ relies on...) get included
// whenever the page is rendered.
package render
