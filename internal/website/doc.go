// Package website renders the catalog as a static HTML page.
//
// The page is built by substituting two placeholders in an HTML template:
// the page title and the movie grid, one list item per movie. The default
// template and stylesheet are embedded; a custom template can be supplied
// through website.template_path.
package website
