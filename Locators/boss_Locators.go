package locators

/**
 * Boss直聘网页元素定位器
 * 集中管理所有页面元素的定位表达式
 */

// 主页/登录相关元素
const USER_AVATAR = "li.nav-figure"
const QR_CODE_IMAGE = "div.login-register-content img.qr-code-img, div.qr-img-box img"

/**
 * 搜索结果页相关元素
 */
// 定位一个岗位卡
const JOB_CARD_BOX = "li.job-card-box"
// 岗位名称链接，href为岗位唯一标识
const JOB_NAME_LINK = "a.job-name"
// 公司名称
const COMPANY_NAME = "span.boss-name"
// 公司区域
const JOB_AREA = "span.company-location"
// 岗位标签
const TAG_LIST = "ul.tag-list li"
// 没有更多结果的标记
const NO_MORE_RESULTS = "div.job-list-container div.finished"

// 职位详情页元素
const CHAT_BUTTON = "a.btn-startchat, a.op-btn-chat, [class*='btn btn-startchat']"
const JOB_DETAIL_SALARY = "div.info-primary span.salary"
const RECRUITER_INFO = "div.boss-info-attr"
const HR_ACTIVE_TIME = "span.boss-active-time"
const JOB_DESCRIPTION = "div.job-sec-text"

// 聊天相关元素
const CHAT_INPUT = "div#chat-input.chat-input[contenteditable='true'], textarea.input-area"
const SEND_BUTTON = "div.send-message, button[type='send'].btn-send, button.btn-send"
const IMAGE_UPLOAD = "div[aria-label='发送图片'] input[type='file']"
const DIALOG_CLOSE = "i.icon-close"
