package main

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"

	"github.com/fractalshard/game-api/internal/content"
	"github.com/fractalshard/game-api/internal/entities"
	battleorch "github.com/fractalshard/game-api/internal/orchestrators/battle"
	characterorch "github.com/fractalshard/game-api/internal/orchestrators/character"
	storyorch "github.com/fractalshard/game-api/internal/orchestrators/story"
	"github.com/fractalshard/game-api/internal/pkg/clock"
	"github.com/fractalshard/game-api/internal/pkg/idgen"
	"github.com/fractalshard/game-api/internal/pkg/scheduler"
	redisclient "github.com/fractalshard/game-api/internal/redis"
	battlerepo "github.com/fractalshard/game-api/internal/repositories/battle"
	characterrepo "github.com/fractalshard/game-api/internal/repositories/character"
	sessionrepo "github.com/fractalshard/game-api/internal/repositories/storysession"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted walkthrough against in-memory dependencies",
	Long:  `Creates a character, walks the story graph taking the first open choice at each node, then fights the default encounter to completion. Useful for eyeballing content changes without a Redis instance.`,
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mr, err := miniredis.Run()
	if err != nil {
		return err
	}
	defer mr.Close()

	redisClient, err := redisclient.NewClient(mr.Addr(), nil)
	if err != nil {
		return err
	}

	clk := clock.New()

	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: redisClient})
	if err != nil {
		return err
	}
	sessRepo, err := sessionrepo.NewRedis(&sessionrepo.RedisConfig{Client: redisClient, Clock: clk})
	if err != nil {
		return err
	}

	charService, err := characterorch.New(&characterorch.Config{
		CharacterRepo: charRepo,
		IDGenerator:   idgen.NewSequential("char"),
		Clock:         clk,
	})
	if err != nil {
		return err
	}

	graph, err := content.DefaultStory()
	if err != nil {
		return err
	}
	storyService, err := storyorch.New(&storyorch.Config{
		SessionRepo:      sessRepo,
		CharacterService: charService,
		Graph:            graph,
		IDGenerator:      idgen.NewSequential("session"),
		Clock:            clk,
	})
	if err != nil {
		return err
	}

	enemies, err := content.DefaultEnemies()
	if err != nil {
		return err
	}
	sched := scheduler.NewManual()
	battleService, err := battleorch.New(&battleorch.Config{
		BattleRepo:       battlerepo.NewInMemory(),
		CharacterService: charService,
		Enemies:          enemies,
		Scheduler:        sched,
		IDGenerator:      idgen.NewSequential("battle"),
		Clock:            clk,
	})
	if err != nil {
		return err
	}

	created, err := charService.CreateCharacter(ctx, &characterorch.CreateCharacterInput{
		Name:  "Kael",
		Class: entities.ClassWarrior,
	})
	if err != nil {
		return err
	}
	char := created.Character
	fmt.Printf("== %s the %s (HP %d, MP %d) ==\n\n",
		char.Name, char.Class, char.Stats.Health.Max, char.Stats.Mana.Max)

	if err := walkStory(ctx, storyService, char.ID); err != nil {
		return err
	}

	return fightBattle(ctx, battleService, sched, char.ID)
}

// walkStory takes the first selectable choice at every node until the
// graph hands control out or dead-ends.
func walkStory(ctx context.Context, svc storyorch.Service, characterID string) error {
	started, err := svc.StartSession(ctx, &storyorch.StartSessionInput{CharacterID: characterID})
	if err != nil {
		return err
	}
	sessionID := started.Session.ID

	for steps := 0; steps < 20; steps++ {
		skipped, err := svc.SkipTyping(ctx, &storyorch.SkipTypingInput{SessionID: sessionID})
		if err != nil {
			return err
		}
		node := skipped.Node
		fmt.Printf("[%s] %s\n", node.ID, node.Text)

		var pick string
		for _, c := range node.Choices {
			if c.Selectable {
				pick = c.ID
				fmt.Printf("  > %s\n", c.Text)
				break
			}
		}
		if pick == "" {
			fmt.Println("\n(no open choices, story ends here)")
			return nil
		}

		result, err := svc.HandleChoice(ctx, &storyorch.HandleChoiceInput{
			SessionID: sessionID,
			ChoiceID:  pick,
		})
		if err != nil {
			return err
		}
		if result.Redirect != "" {
			progress, err := svc.GetProgress(ctx, &storyorch.GetProgressInput{SessionID: sessionID})
			if err != nil {
				return err
			}
			fmt.Printf("\n(redirect to %s, visited %d/%d nodes)\n\n",
				result.Redirect, progress.Visited, progress.Total)
			return nil
		}
	}
	return nil
}

// fightBattle attacks every turn, draining the scheduler by hand so the
// enemy stage resolves inline.
func fightBattle(ctx context.Context, svc battleorch.Service, sched *scheduler.Manual, characterID string) error {
	started, err := svc.StartBattle(ctx, &battleorch.StartBattleInput{CharacterID: characterID})
	if err != nil {
		return err
	}
	battleID := started.Battle.ID
	printed := 0

	for turn := 0; turn < 60; turn++ {
		if _, err := svc.SubmitAction(ctx, &battleorch.SubmitActionInput{
			BattleID: battleID,
			Action:   entities.ActionAttack,
		}); err != nil {
			return err
		}
		sched.RunPending()

		current, err := svc.GetBattle(ctx, &battleorch.GetBattleInput{BattleID: battleID})
		if err != nil {
			return err
		}
		printed = printLog(current.Battle.Log, printed)

		if current.Battle.Complete() {
			fmt.Printf("\n== battle over: %s ==\n", current.Battle.Outcome)
			return nil
		}
	}
	return nil
}

func printLog(log []entities.LogEntry, from int) int {
	for _, entry := range log[from:] {
		fmt.Printf("  %s\n", entry.Text)
	}
	return len(log)
}
