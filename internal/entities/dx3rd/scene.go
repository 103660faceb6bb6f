package dx3rd

// Scene is a play surface; its tokens place actors on it.
type Scene struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tokens []Token `json:"tokens"`
}

// Token places one actor on a scene
type Token struct {
	ID      string `json:"id"`
	ActorID string `json:"actorId"`
}

// ActorIDs returns the distinct actor IDs behind the scene's tokens, in token order
func (s *Scene) ActorIDs() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Tokens))
	ids := make([]string, 0, len(s.Tokens))
	for _, token := range s.Tokens {
		if token.ActorID == "" || seen[token.ActorID] {
			continue
		}
		seen[token.ActorID] = true
		ids = append(ids, token.ActorID)
	}
	return ids
}
