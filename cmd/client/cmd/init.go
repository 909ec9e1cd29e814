// cmd/client/cmd/init.go
package cmd

import (
	"clusterview/cmd/client/cmd/admin"
	"clusterview/cmd/client/cmd/auth"
	"clusterview/cmd/client/cmd/listings"
	"clusterview/cmd/client/cmd/profile"
	"clusterview/cmd/client/cmd/query"
	"clusterview/cmd/client/cmd/shop"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.ForgotCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(listings.ListingsCmd)
	listings.ListingsCmd.AddCommand(listings.ListCmd)
	listings.ListingsCmd.AddCommand(listings.AddCmd)
	listings.ListingsCmd.AddCommand(listings.EditCmd)
	listings.ListingsCmd.AddCommand(listings.DeleteCmd)

	rootCmd.AddCommand(shop.ShopCmd)
	shop.ShopCmd.AddCommand(shop.ListCmd)
	shop.ShopCmd.AddCommand(shop.SaveCmd)
	shop.ShopCmd.AddCommand(shop.UnsaveCmd)
	shop.ShopCmd.AddCommand(shop.SavedCmd)

	rootCmd.AddCommand(admin.AdminCmd)
	admin.AdminCmd.AddCommand(admin.BrowseCmd)

	rootCmd.AddCommand(profile.ProfileCmd)
	profile.ProfileCmd.AddCommand(profile.ShowCmd)
	profile.ProfileCmd.AddCommand(profile.EditCmd)

	rootCmd.AddCommand(query.QueryCmd)
}
