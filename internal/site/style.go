package site

// baseStyles is inlined into every page.
const baseStyles = `body{margin:0;font-family:system-ui,-apple-system,sans-serif;line-height:1.6;color:#1c1e21}
.navbar{padding:.75rem 1.5rem;border-bottom:1px solid #dadde1}
.navbar-brand{font-weight:700;color:inherit;text-decoration:none}
.docs-wrapper{display:flex;gap:2rem;max-width:1400px;margin:0 auto;padding:1.5rem}
.docs-main{flex:1;min-width:0}
.toc{flex:0 0 14rem;font-size:.875rem}
.toc li[data-level="3"]{margin-left:1rem}
pre{padding:1rem;overflow:auto;background:#f6f8fa;border-radius:.375rem}
.table-wrapper{overflow-x:auto}
.hash-link{opacity:0;padding-left:.5rem;text-decoration:none}
h1:hover .hash-link,h2:hover .hash-link,h3:hover .hash-link{opacity:1}
.hash-link::before{content:"#"}
.pagination{display:flex;justify-content:space-between;margin-top:2rem}`
