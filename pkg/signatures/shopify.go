package signatures

import "regexp"

var myshopifyDomain = regexp.MustCompile(`[\w-]+\.myshopify\.com`)

var shopifyRules = []Rule{
	{Label: "Shopify shop header", Weight: 4, Check: anyOf(
		headerPresent("X-ShopId"),
		headerPresent("X-Shopify-Stage"),
	)},
	{Label: "Shopify CDN asset", Weight: 3, Check: bodyContains("cdn.shopify.com")},
	{Label: "myshopify domain reference", Weight: 2, Check: bodyMatches(myshopifyDomain)},
	{Label: "Shopify.theme JS global", Weight: 2, Check: bodyContains("Shopify.theme")},
	{Label: "Shopify.routes JS global", Weight: 2, Check: bodyContains("Shopify.routes")},
	{Label: "Shopify checkout marker", Weight: 2, Check: anyOf(
		bodyContains("shopify_pay"),
		bodyContains("/checkouts/"),
		bodyContains("shop_pay"),
	)},
	{Label: "Shopify analytics cookie marker", Weight: 2, Check: anyOf(
		bodyContains("_shopify_y"),
		bodyContains("_shopify_s"),
	)},
}
