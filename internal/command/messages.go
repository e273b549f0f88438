package command

import "fmt"

const (
	msgNotRegistered   = "I couldn't find a registered Fault username for you. Try using /register to save one."
	msgNothingToRemove = "There is no Fault username registered to your Discord user."
	msgRegistryFailure = "Something went wrong talking to the registry. Please try again."
	msgNameRequired    = "Please give me a Fault username, for example `/register name:qchrisd`."
	msgEmptyGuild      = "No Fault usernames are registered in this server.\nUse `/register` to add one!"
)

const helpMessage = `**Fault stats bot**
I can help with the following things:

**/register _<name>_** - link your Discord user to a Fault username in this server.
**/unregister** - forget the Fault username linked to you.
**/show-registration** - show the Fault username linked to you.
**/elo _[name]_** - rank, MMR and leaderboard position.
**/match _[name]_** - the most recent match, split by team.
**/heroes _[name] [sort]_** - per-hero statistics. Sort by games, wins, kills, deaths, assists or name.
**/list** - every registered player in this server.

Leave out the name to use your registered Fault username.`

func msgNameNotFound(name string) string {
	return fmt.Sprintf("I couldn't find `%s`. Check your spelling and try again.", name)
}

func msgRegistered(username string, id int64) string {
	return fmt.Sprintf("Your Fault username has been updated to **%s** (id: %d). Use this command again if you would like to change it.", username, id)
}

func msgUnregistered(username string) string {
	return fmt.Sprintf("Your Fault username **%s** has been forgotten. Use /register to add a new one.", username)
}

func msgShowRegistration(username string, id int64) string {
	return fmt.Sprintf("Your registered Fault username is **%s** (id: %d).", username, id)
}

func msgNoElo(username string) string {
	return fmt.Sprintf("I couldn't find elo data for **%s**.", username)
}

func msgNoMatch(username string) string {
	return fmt.Sprintf("I couldn't find any matches for **%s**.", username)
}

func msgNoHeroes(username string) string {
	return fmt.Sprintf("I couldn't find hero statistics for **%s**.", username)
}

func msgBadSort(key string) string {
	return fmt.Sprintf("Unknown sort `%s`. Use one of: games, wins, kills, deaths, assists, name.", key)
}
