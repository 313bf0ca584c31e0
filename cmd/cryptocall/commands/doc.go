// Package commands implements the cryptocall CLI.
//
//	cryptocall serve                     run the local JSON API
//	cryptocall call --learn 5            request a call about a catalog topic
//	cryptocall topics                    print the topic catalog
//	cryptocall balance <address>         print a native balance
//	cryptocall connectors                list wallet connectors
package commands
