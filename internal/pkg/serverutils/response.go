package serverutils

import "github.com/gofiber/fiber/v2"

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	}
}
