package services

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var fixtureTags = []string{"go", "web", "notes", "life", "reading"}

// GenerateFakeData fills a development database with demo accounts and
// posts. Content flows through the regular write path, so every derived
// field (slug, sanitized HTML, language) is computed exactly as it would be
// for a real author.
func GenerateFakeData(accountCount, postCount int) error {
	for i := 0; i < accountCount; i++ {
		name := fmt.Sprintf("demo-%d", i)
		if _, err := GetAccountWithEmail(name + "@example.com"); err == nil {
			continue
		}
		account, err := CreateAccount(name, name+"@example.com", "changeme")
		if err != nil {
			return fmt.Errorf("unable to create demo account: %v", err)
		}
		if err := ConfirmAccount(account); err != nil {
			return err
		}
	}

	accounts, _, err := ListAccount(accountCount, 0)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return fmt.Errorf("no accounts to author demo posts")
	}

	for i := 0; i < postCount; i++ {
		author := accounts[rand.Intn(len(accounts))]
		tags := lo.Samples(fixtureTags, rand.Intn(3))
		title := fmt.Sprintf("Demo Post %d", i)
		body := fmt.Sprintf("This is the body of *demo post %d*, written by %s.", i, author.Name)
		if _, err := NewPost(author, title, body, tags); err != nil {
			return fmt.Errorf("unable to create demo post: %v", err)
		}
	}

	log.Info().Int("accounts", accountCount).Int("posts", postCount).Msg("Fake data generated.")
	return nil
}
