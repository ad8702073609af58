package controller

import (
	"errors"
	"strconv"

	"github.com/benbeisheim/chessrelay/internal/model"
	"github.com/benbeisheim/chessrelay/internal/service"
	"github.com/benbeisheim/chessrelay/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Register mounts the REST routes on router.
func (gc *GameController) Register(router fiber.Router) {
	gameRoutes := router.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/moves", gc.LegalMoves)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Post("/:gameId/reset", gc.ResetGame)

	router.Get("/results", gc.ListResults)
	router.Get("/results/:gameId", gc.GetResult)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	row, rowErr := strconv.Atoi(c.Query("row"))
	col, colErr := strconv.Atoi(c.Query("col"))
	if rowErr != nil || colErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col query parameters must be integers",
		})
	}

	from := model.Square{Row: row, Col: col}
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.Move
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"from\": [row, col], \"to\": [row, col]}",
		})
	}

	result, err := gc.gameService.HandleMove(c.Params("gameId"), move)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ResetGame(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetResult(c *fiber.Ctx) error {
	result, err := gc.gameService.GetResult(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) ListResults(c *fiber.Ctx) error {
	results, wins, err := gc.gameService.Results()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"results": results,
		"wins":    wins,
	})
}

func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	body := fiber.Map{"error": err.Error()}

	var moveErr *model.MoveError
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, storage.ErrResultNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, model.ErrGameOver):
		status = fiber.StatusConflict
	case errors.As(err, &moveErr):
		status = fiber.StatusUnprocessableEntity
		body["reason"] = moveErr.Reason.String()
	default:
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		body["error"] = "internal error"
	}
	return c.Status(status).JSON(body)
}
