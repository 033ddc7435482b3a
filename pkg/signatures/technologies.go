package signatures

// TechPair defines a technology detected only when a generic keyword AND at
// least one specific marker both occur in the page. The pairing keeps
// incidental word matches in visible copy from counting.
type TechPair struct {
	Name    string
	Keyword string
	Markers []string
}

var TechnologyPairs = []TechPair{
	{Name: "React", Keyword: "react", Markers: []string{"react.js", "react.min.js", "reactjs", "__react", "data-reactroot", "react-dom"}},
	{Name: "Vue.js", Keyword: "vue", Markers: []string{"vue.js", "vue.min.js", "__vue__", "data-v-", "vue-router"}},
	{Name: "Angular", Keyword: "angular", Markers: []string{"angular.js", "angular.min.js", "ng-app", "ng-version"}},
	{Name: "Next.js", Keyword: "next", Markers: []string{"_next/static", "__NEXT_DATA__", "next.js"}},
	{Name: "Nuxt.js", Keyword: "nuxt", Markers: []string{"__NUXT__", "_nuxt/", "nuxt.js"}},
	{Name: "Gatsby", Keyword: "gatsby", Markers: []string{"___gatsby", "gatsby-focus-wrapper"}},
	{Name: "Svelte", Keyword: "svelte", Markers: []string{"svelte-", "__svelte"}},
	{Name: "jQuery", Keyword: "jquery", Markers: []string{"jquery.js", "jquery.min.js", "jquery-migrate"}},
	{Name: "Bootstrap", Keyword: "bootstrap", Markers: []string{"bootstrap.css", "bootstrap.min.css", "bootstrap.bundle"}},
	{Name: "Tailwind CSS", Keyword: "tailwind", Markers: []string{"tailwindcss", "tailwind.css", "tailwind.min.css"}},
	{Name: "Hugo", Keyword: "hugo", Markers: []string{"generator\" content=\"Hugo", "hugo-generator"}},
	{Name: "Jekyll", Keyword: "jekyll", Markers: []string{"generator\" content=\"Jekyll", "jekyll-seo-tag"}},
	{Name: "Cloudflare", Keyword: "cloudflare", Markers: []string{"cdn-cgi/", "cloudflareinsights"}},
	{Name: "Netlify", Keyword: "netlify", Markers: []string{"netlify.app", ".netlify/"}},
	{Name: "Vercel", Keyword: "vercel", Markers: []string{"vercel.app", "vercel-insights"}},
	{Name: "GitHub Pages", Keyword: "github", Markers: []string{"github.io", "githubusercontent"}},
}
