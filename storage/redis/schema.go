package redis

import "fmt"

func (s Storage) stateKey(game string) string {
	return fmt.Sprintf("%s:%s:STATE", s.Namespace, game)
}

func (s Storage) leaderboardKey(game string) string {
	return fmt.Sprintf("%s:%s:LEADERBOARD", s.Namespace, game)
}
